package planner

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"wedding-planner/internal/models"
	"wedding-planner/internal/storage"
)

const (
	DefaultWeddingDate = "2025-06-20"
	DefaultBudgetGoal  = 30000

	dateLayout = "2006-01-02"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

var validate = validator.New()

// Planner owns every entity collection and setting of one wedding.
// Each mutation is written through to the key-value store immediately.
type Planner struct {
	tasks          *storage.Collection[models.Task]
	guests         *storage.Collection[models.Guest]
	expenses       *storage.Collection[models.Expense]
	moodboard      *storage.Collection[models.MoodImage]
	financialGifts *storage.Collection[models.FinancialGift]
	weddingGifts   *storage.Collection[models.WeddingGift]

	weddingDate  *storage.StringValue
	budgetGoal   *storage.NumberValue
	weddingEmail *storage.StringValue

	now func() time.Time
	log zerolog.Logger
}

// Option configures a Planner
type Option func(*Planner)

// WithClock overrides the time source used for dates and the countdown
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		p.now = now
	}
}

// New loads (or seeds) all planner state from kv
func New(kv storage.KeyValue, log zerolog.Logger, opts ...Option) *Planner {
	p := &Planner{
		now: time.Now,
		log: log.With().Str("component", "planner").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.tasks = storage.NewCollection(kv, storage.KeyTasks, log, storage.WithSeed(models.DefaultTasks()))
	p.guests = storage.NewCollection(kv, storage.KeyGuests, log, storage.WithOrder[models.Guest](storage.Append))
	p.expenses = storage.NewCollection[models.Expense](kv, storage.KeyExpenses, log)
	p.moodboard = storage.NewCollection[models.MoodImage](kv, storage.KeyMoodboard, log)
	p.financialGifts = storage.NewCollection[models.FinancialGift](kv, storage.KeyFinancialGifts, log)
	p.weddingGifts = storage.NewCollection[models.WeddingGift](kv, storage.KeyWeddingGifts, log)

	p.weddingDate = storage.NewStringValue(kv, storage.KeyWeddingDate, DefaultWeddingDate, log)
	p.budgetGoal = storage.NewNumberValue(kv, storage.KeyBudgetGoal, DefaultBudgetGoal, log)
	p.weddingEmail = storage.NewStringValue(kv, storage.KeyWeddingEmail, "", log)

	p.log.Debug().
		Int("tasks", p.tasks.Len()).
		Int("guests", p.guests.Len()).
		Int("expenses", p.expenses.Len()).
		Msg("Planner loaded")

	return p
}

// WeddingDate returns the wedding date as YYYY-MM-DD
func (p *Planner) WeddingDate() string {
	return p.weddingDate.Get()
}

// SetWeddingDate changes the wedding date (YYYY-MM-DD)
func (p *Planner) SetWeddingDate(date string) error {
	date = strings.TrimSpace(date)
	if err := validate.Var(date, "required,datetime="+dateLayout); err != nil {
		return fmt.Errorf("%w: wedding date must look like 2025-06-20", ErrInvalidInput)
	}
	p.weddingDate.Set(date)
	return nil
}

// BudgetGoal returns the total budget
func (p *Planner) BudgetGoal() float64 {
	return p.budgetGoal.Get()
}

// SetBudgetGoal changes the total budget
func (p *Planner) SetBudgetGoal(goal float64) error {
	if goal < 0 {
		return fmt.Errorf("%w: budget goal cannot be negative", ErrInvalidInput)
	}
	p.budgetGoal.Set(goal)
	return nil
}

// WeddingEmail returns the shared wedding inbox address
func (p *Planner) WeddingEmail() string {
	return p.weddingEmail.Get()
}

// SetWeddingEmail changes the wedding inbox address; empty clears it
func (p *Planner) SetWeddingEmail(email string) error {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "omitempty,email"); err != nil {
		return fmt.Errorf("%w: %q is not an email address", ErrInvalidInput, email)
	}
	p.weddingEmail.Set(email)
	return nil
}

func (p *Planner) today() string {
	return p.now().Format(dateLayout)
}

// validateStruct validates s based on its validation tags
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date", field)
	case "datauri":
		return fmt.Sprintf("%s must be a data URI", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func percent(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
