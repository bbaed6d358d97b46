package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// loadFromEnv overrides configuration fields tagged with env:"VAR" from the
// process environment.
func loadFromEnv(config *Config) error {
	return overrideFromEnv(reflect.ValueOf(config).Elem())
}

func overrideFromEnv(val reflect.Value) error {
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() == reflect.Struct {
			if err := overrideFromEnv(field); err != nil {
				return err
			}
			continue
		}

		envVar := typ.Field(i).Tag.Get("env")
		if envVar == "" {
			continue
		}
		raw, ok := os.LookupEnv(envVar)
		if !ok {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("env var %s: expected integer, got %q", envVar, raw)
			}
			field.SetInt(int64(n))
		case reflect.Bool:
			switch strings.ToLower(raw) {
			case "true", "1", "yes":
				field.SetBool(true)
			case "false", "0", "no":
				field.SetBool(false)
			default:
				return fmt.Errorf("env var %s: expected boolean, got %q", envVar, raw)
			}
		default:
			return fmt.Errorf("env var %s: unsupported field kind %s", envVar, field.Kind())
		}
	}
	return nil
}
