package validator

import (
	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator bundles struct validation and business rule validation.
type Validator struct {
	validate *validator.Validate
	business *BusinessValidator
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	business := NewBusinessValidator()
	return &Validator{
		validate: business.validate,
		business: business,
	}
}

// Validate validates a struct's tags and returns ValidationErrors on failure.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// GetBusinessValidator returns the underlying business validator.
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateQuestionCreate validates question creation business rules
func (bv *BusinessValidator) ValidateQuestionCreate(req *QuestionCreateRequest) ValidationErrors {
	var errors ValidationErrors

	// Basic struct validation
	errors = append(errors, bv.Validate(req)...)

	// Question-specific business validations
	errors = append(errors, bv.validateQuestionBusinessRules(req)...)

	return errors
}

func (bv *BusinessValidator) validateQuestionBusinessRules(req *QuestionCreateRequest) ValidationErrors {
	var errors ValidationErrors

	// Multiple choice needs at least two options
	if req.Type == models.MultipleChoice && len(req.Options) < 2 {
		errors = append(errors, ValidationError{
			Field:   "options",
			Message: "multiple_choice questions require at least 2 options",
			Rule:    "options_count",
		})
	}

	if req.Type == models.TrueFalse && len(req.Options) > 0 {
		errors = append(errors, ValidationError{
			Field:   "options",
			Message: "true_false questions must not define options",
			Rule:    "options_forbidden",
		})
	}

	return errors
}

func (bv *BusinessValidator) registerBusinessRules() {
	// question type validation
	bv.validate.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		return models.QuestionType(fl.Field().String()).IsValid()
	})

	// bloom level validation
	bv.validate.RegisterValidation("bloom_level", func(fl validator.FieldLevel) bool {
		return models.BloomLevel(fl.Field().String()).IsValid()
	})

	// question status validation
	bv.validate.RegisterValidation("question_status", func(fl validator.FieldLevel) bool {
		return models.QuestionStatus(fl.Field().String()).IsValid()
	})

	// difficulty domain validation, [0.0, 1.0]
	bv.validate.RegisterValidation("difficulty_range", func(fl validator.FieldLevel) bool {
		d := fl.Field().Float()
		return d >= 0.0 && d <= 1.0
	})

	// suggestion difficulty keyword validation
	bv.validate.RegisterValidation("suggestion_difficulty", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "easy", "medium", "hard", "mixed":
			return true
		}
		return false
	})
}
