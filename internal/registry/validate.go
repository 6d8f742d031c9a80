package registry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	nameRule   = regexp.MustCompile(`^[^\s-]\S*$`)
	envKeyRule = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Normalize trims surrounding whitespace from the scalar fields.
func (s *EnvironmentSpec) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.ProjectPath = strings.TrimSpace(s.ProjectPath)
	s.PythonEnv = strings.TrimSpace(s.PythonEnv)
	s.NodeVersion = strings.TrimSpace(s.NodeVersion)
	s.Description = strings.TrimSpace(s.Description)
}

// Validate checks the spec. Failures wrap ErrValidation.
func (s EnvironmentSpec) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.Name,
			validation.Required,
			validation.Length(1, 128),
			validation.Match(nameRule).Error("must not contain whitespace or start with '-'"),
		),
		validation.Field(&s.ProjectPath, validation.Required),
		validation.Field(&s.EnvVars, validation.By(validateEnvVars)),
		validation.Field(&s.Commands, validation.Each(validation.By(validateCommand))),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func validateEnvVars(value interface{}) error {
	vars, _ := value.(EnvVars)
	seen := make(map[string]struct{}, len(vars))
	for _, ev := range vars {
		if !envKeyRule.MatchString(ev.Key) {
			return fmt.Errorf("invalid variable name %q", ev.Key)
		}
		if _, dup := seen[ev.Key]; dup {
			return fmt.Errorf("duplicate variable %q", ev.Key)
		}
		seen[ev.Key] = struct{}{}
	}
	return nil
}

func validateCommand(value interface{}) error {
	cmd, _ := value.(string)
	if strings.TrimSpace(cmd) == "" {
		return errors.New("must not be blank")
	}
	return nil
}
