package application

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Command inputs are validated before any network call is attempted.

type CreatePageInput struct {
	Title    string
	ParentID string
	// Content lines become paragraph blocks on the new page.
	Content string
}

func (in CreatePageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.ParentID, validation.Required),
	)
}

type UpdatePageInput struct {
	Title     string
	Archive   bool
	Unarchive bool
}

func (in UpdatePageInput) Validate() error {
	if in.Archive && in.Unarchive {
		return errors.New("--archive and --unarchive are mutually exclusive")
	}
	if in.Title == "" && !in.Archive && !in.Unarchive {
		return errors.New("nothing to update: pass --title, --archive or --unarchive")
	}
	return nil
}

type QueryDatabaseInput struct {
	Filter string
	Sorts  string
	Limit  int
}

func (in QueryDatabaseInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Filter, validation.By(jsonObjectRule)),
		validation.Field(&in.Sorts, validation.By(jsonArrayRule)),
	)
}

type CreateDatabaseInput struct {
	Title    string
	ParentID string
	Schema   string
}

func (in CreateDatabaseInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.ParentID, validation.Required),
		validation.Field(&in.Schema, validation.By(jsonObjectRule)),
	)
}

type UpdateDatabaseInput struct {
	Title     string
	Schema    string
	Archive   bool
	Unarchive bool
}

func (in UpdateDatabaseInput) Validate() error {
	if in.Archive && in.Unarchive {
		return errors.New("--archive and --unarchive are mutually exclusive")
	}
	if in.Title == "" && in.Schema == "" && !in.Archive && !in.Unarchive {
		return errors.New("nothing to update: pass --title, --schema, --archive or --unarchive")
	}
	return validation.Validate(in.Schema, validation.By(jsonObjectRule))
}

func jsonObjectRule(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &object); err != nil {
		return errors.New("must be a JSON object")
	}
	return nil
}

func jsonArrayRule(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}

	var array []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &array); err != nil {
		return errors.New("must be a JSON array")
	}
	return nil
}
