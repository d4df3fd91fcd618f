// Package config parses and validates YAML scenario files. Validation is
// the hardening layer the engine deliberately lacks: malformed parameters
// are rejected here with field-path errors instead of degrading silently.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/halewood/loansim/internal/domain"
)

// Defaults applied when the policy section omits a field.
var (
	DefaultRepaymentThreshold = decimal.NewFromInt(27295)
	DefaultRepaymentRate      = decimal.NewFromFloat(0.09)
	DefaultInterestRate       = decimal.NewFromFloat(0.043)
)

// DateFormat is the accepted layout for scenario dates.
const DateFormat = "2006-01-02"

// LoanConfig is the loan section of a scenario file.
type LoanConfig struct {
	Principal          decimal.Decimal  `yaml:"principal"`
	StartDate          string           `yaml:"startDate"`
	WriteOffDate       string           `yaml:"writeOffDate"`
	AnnualInterestRate *decimal.Decimal `yaml:"annualInterestRate"`
}

// BorrowerConfig is the borrower section of a scenario file.
type BorrowerConfig struct {
	InitialSalary decimal.Decimal   `yaml:"initialSalary"`
	SalaryGrowth  decimal.Decimal   `yaml:"salaryGrowth"`
	GrowthMode    domain.GrowthMode `yaml:"growthMode"`
}

// PolicyConfig is the repayment policy section of a scenario file. Omitted
// fields fall back to the plan-2 defaults.
type PolicyConfig struct {
	RepaymentThreshold *decimal.Decimal `yaml:"repaymentThreshold"`
	RepaymentRate      *decimal.Decimal `yaml:"repaymentRate"`
}

// ScenarioConfig is a complete parsed scenario file.
type ScenarioConfig struct {
	Loan     LoanConfig             `yaml:"loan"`
	Borrower BorrowerConfig         `yaml:"borrower"`
	Policy   PolicyConfig           `yaml:"policy"`
	Plans    []domain.RepaymentPlan `yaml:"plans"`

	startDate    time.Time
	writeOffDate time.Time
}

// InputParser handles parsing of scenario configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a scenario from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the scenario and parses its dates. It must be called
// before ToLoanParameters.
func (ip *InputParser) Validate(cfg *ScenarioConfig) error {
	if err := ip.validateLoan(cfg); err != nil {
		return err
	}
	if err := ip.validateBorrower(&cfg.Borrower); err != nil {
		return err
	}
	if err := ip.validatePolicy(&cfg.Policy); err != nil {
		return err
	}
	return ip.validatePlans(cfg.Plans)
}

func (ip *InputParser) validateLoan(cfg *ScenarioConfig) error {
	if cfg.Loan.Principal.IsNegative() {
		return fmt.Errorf("loan.principal must be non-negative, got %s", cfg.Loan.Principal)
	}
	if cfg.Loan.AnnualInterestRate != nil && cfg.Loan.AnnualInterestRate.IsNegative() {
		return fmt.Errorf("loan.annualInterestRate must be non-negative, got %s", cfg.Loan.AnnualInterestRate)
	}

	if cfg.Loan.StartDate == "" {
		return fmt.Errorf("loan.startDate is required")
	}
	start, err := time.Parse(DateFormat, cfg.Loan.StartDate)
	if err != nil {
		return fmt.Errorf("loan.startDate: %w", err)
	}

	if cfg.Loan.WriteOffDate == "" {
		return fmt.Errorf("loan.writeOffDate is required")
	}
	writeOff, err := time.Parse(DateFormat, cfg.Loan.WriteOffDate)
	if err != nil {
		return fmt.Errorf("loan.writeOffDate: %w", err)
	}

	if !writeOff.After(start) {
		return fmt.Errorf("loan.writeOffDate (%s) must be after loan.startDate (%s)",
			cfg.Loan.WriteOffDate, cfg.Loan.StartDate)
	}

	cfg.startDate = start
	cfg.writeOffDate = writeOff
	return nil
}

func (ip *InputParser) validateBorrower(b *BorrowerConfig) error {
	if b.InitialSalary.IsNegative() {
		return fmt.Errorf("borrower.initialSalary must be non-negative, got %s", b.InitialSalary)
	}
	if b.GrowthMode == "" {
		b.GrowthMode = domain.GrowthPercentage
	}
	if !b.GrowthMode.IsValid() {
		return fmt.Errorf("borrower.growthMode must be %q or %q, got %q",
			domain.GrowthPercentage, domain.GrowthFixedAmount, b.GrowthMode)
	}
	return nil
}

func (ip *InputParser) validatePolicy(p *PolicyConfig) error {
	if p.RepaymentThreshold != nil && p.RepaymentThreshold.IsNegative() {
		return fmt.Errorf("policy.repaymentThreshold must be non-negative, got %s", p.RepaymentThreshold)
	}
	if p.RepaymentRate != nil {
		one := decimal.NewFromInt(1)
		if p.RepaymentRate.IsNegative() || p.RepaymentRate.GreaterThan(one) {
			return fmt.Errorf("policy.repaymentRate must be between 0 and 1, got %s", p.RepaymentRate)
		}
	}
	return nil
}

func (ip *InputParser) validatePlans(plans []domain.RepaymentPlan) error {
	seen := make(map[string]bool, len(plans))
	for i, plan := range plans {
		if plan.Name == "" {
			return fmt.Errorf("plans[%d]: name is required", i)
		}
		if seen[plan.Name] {
			return fmt.Errorf("plans[%d]: duplicate plan name %q", i, plan.Name)
		}
		seen[plan.Name] = true
		if plan.Upfront.IsNegative() {
			return fmt.Errorf("plans[%d] (%s): upfront must be non-negative, got %s", i, plan.Name, plan.Upfront)
		}
		if plan.MonthlyFixed.IsNegative() {
			return fmt.Errorf("plans[%d] (%s): monthlyFixed must be non-negative, got %s", i, plan.Name, plan.MonthlyFixed)
		}
	}
	return nil
}

// ToLoanParameters builds the engine parameters from a validated scenario,
// filling policy defaults for omitted fields.
func (cfg *ScenarioConfig) ToLoanParameters() domain.LoanParameters {
	threshold := DefaultRepaymentThreshold
	if cfg.Policy.RepaymentThreshold != nil {
		threshold = *cfg.Policy.RepaymentThreshold
	}
	rate := DefaultRepaymentRate
	if cfg.Policy.RepaymentRate != nil {
		rate = *cfg.Policy.RepaymentRate
	}
	interest := DefaultInterestRate
	if cfg.Loan.AnnualInterestRate != nil {
		interest = *cfg.Loan.AnnualInterestRate
	}

	return domain.LoanParameters{
		StartDate:          cfg.startDate,
		WriteOffDate:       cfg.writeOffDate,
		Principal:          cfg.Loan.Principal,
		InitialSalary:      cfg.Borrower.InitialSalary,
		SalaryGrowth:       cfg.Borrower.SalaryGrowth,
		GrowthMode:         cfg.Borrower.GrowthMode,
		RepaymentThreshold: threshold,
		RepaymentRate:      rate,
		AnnualInterestRate: interest,
	}
}

// FindPlan returns the named plan, or an error listing what is available.
func (cfg *ScenarioConfig) FindPlan(name string) (domain.RepaymentPlan, error) {
	for _, plan := range cfg.Plans {
		if plan.Name == name {
			return plan, nil
		}
	}
	names := make([]string, 0, len(cfg.Plans))
	for _, plan := range cfg.Plans {
		names = append(names, plan.Name)
	}
	return domain.RepaymentPlan{}, fmt.Errorf("plan %q not found in configuration (available: %v)", name, names)
}
