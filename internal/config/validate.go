package config

import "fmt"

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePort checks if a port number is valid.
func ValidatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return &ValidationError{Field: field, Message: "must be between 1 and 65535"}
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Database.Host == "" {
		return &ValidationError{Field: "database.host", Message: "is required"}
	}
	if c.Elasticsearch.URL == "" {
		return &ValidationError{Field: "elasticsearch.url", Message: "is required"}
	}
	for name, mc := range c.Managers {
		if mc.IndexName == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("managers.%s.index_name", name),
				Message: "is required",
			}
		}
	}
	return nil
}
