package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors itemizes binding failures, one message per offending field.
func FieldErrors(err error) []string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return messages
	}
	return []string{err.Error()}
}

// FormatValidationError flattens binding failures into one message.
func FormatValidationError(err error) string {
	return strings.Join(FieldErrors(err), "; ")
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s has an invalid date format", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"RollNo":       "Roll number",
		"Email":        "Email",
		"Password":     "Password",
		"Name":         "Name",
		"Department":   "Department",
		"Year":         "Year",
		"ClassSection": "Class section",
		"RoomCode":     "Room code",
		"Date":         "Date",
		"StartTime":    "Start time",
		"EndTime":      "End time",
		"Purpose":      "Purpose",
		"Title":        "Title",
		"Description":  "Description",
		"Content":      "Content",
		"Category":     "Category",
		"Priority":     "Priority",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
