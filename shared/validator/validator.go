package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/failure"
	"io"
	"mime/multipart"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

var errEmptyBody = errors.New("request body is empty")

// fileExtensionValidation accepts a multipart file or a file name whose
// extension is one of the space separated params, case-insensitively.
func fileExtensionValidation(field val.FieldLevel) bool {
	var name string

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		name = value.Filename
	case string:
		name = value
	default:
		return false
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), ext)
}

func fileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0
	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		fileSize = int(file.Size)
	} else if str, ok := field.Field().Interface().(string); ok {
		fileSize = len(str)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

func notBlankValidation(field val.FieldLevel) bool {
	if str, ok := field.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}

	return !field.Field().IsZero()
}

func jsonTagName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	for tag, fn := range map[string]val.Func{
		"fileext":     fileExtensionValidation,
		"maxfilesize": fileSizeValidation,
		"notblank":    notBlankValidation,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Decode reads a JSON object from r into data without validating it.
// Type mismatches are reported by JSON field path.
func Decode[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		var typeErr *json.UnmarshalTypeError

		switch {
		case errors.Is(err, io.EOF):
			err = errEmptyBody
		case errors.As(err, &typeErr) && typeErr.Field != "":
			err = fmt.Errorf("invalid value for %s: unexpected JSON %s", typeErr.Field, typeErr.Value)
		case errors.As(err, &typeErr):
			err = fmt.Errorf("unexpected JSON %s", typeErr.Value)
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return nil
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := Decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
