package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var durationType = reflect.TypeOf(time.Duration(0))

// LoadEnv overrides config values with the environment variables named by
// the env struct tags. Unset variables leave the current value untouched.
func LoadEnv(config *AppConfig) error {
	sections := []interface{}{
		&config.App,
		&config.Database,
		&config.Server,
		&config.Logging,
		&config.CORS,
		&config.PasswordHash,
		&config.Mail,
		&config.Reset,
		&config.Events,
	}

	for _, section := range sections {
		if err := processStructEnv(section); err != nil {
			return err
		}
	}

	log.Debug().
		Str("APP_ENV", os.Getenv("APP_ENV")).
		Bool("DATABASE_URL_SET", os.Getenv("DATABASE_URL") != "").
		Str("MAIL_PROVIDER", os.Getenv("MAIL_PROVIDER")).
		Msg("Environment variables loaded")

	return nil
}

// processStructEnv applies environment overrides to the tagged fields of the
// struct s points to.
func processStructEnv(s interface{}) error {
	val := reflect.ValueOf(s).Elem()
	typ := val.Type()

	for i := 0; i < typ.NumField(); i++ {
		envName := typ.Field(i).Tag.Get("env")
		if envName == "" || !val.Field(i).CanSet() {
			continue
		}

		raw, ok := os.LookupEnv(envName)
		if !ok {
			continue
		}

		if err := setFromEnv(val.Field(i), raw); err != nil {
			return fmt.Errorf("invalid value for %s: %w", envName, err)
		}
	}

	return nil
}

// setFromEnv parses raw according to the kind of field. Comma separated
// values fill string slices; other slice and struct kinds are left alone.
func setFromEnv(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		field.Set(reflect.ValueOf(parts))
	}

	return nil
}
