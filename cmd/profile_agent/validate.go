package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/profile-agent/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate JSON against a schema",
	Long:  "Validate a JSON file against a JSON Schema. Without --schema the built-in candidate profile schema is used.",
	RunE:  runValidate,
}

var (
	validateSchemaFile string
	validateJSONFile   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Path to JSON Schema file (default: candidate profile schema)")
	validateCmd.Flags().StringVar(&validateJSONFile, "json", "", "Path to JSON file to validate (required)")
	_ = validateCmd.MarkFlagRequired("json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if err := validateFile(validateSchemaFile, validateJSONFile); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprint(os.Stderr, validationErr.Error())
			return fmt.Errorf("validation failed with %d error(s)", len(validationErr.Errors))
		}
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateJSONFile)
	return nil
}

func validateFile(schemaPath, jsonPath string) error {
	if schemaPath != "" {
		return schemas.ValidateJSON(schemaPath, jsonPath)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("JSON file not found: %w", err)
	}
	return schemas.ValidateProfileJSON(data)
}
