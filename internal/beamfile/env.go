package beamfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables holding process-wide defaults
const (
	EnvSamplePoints = "CBEAM_SAMPLE_POINTS"
	EnvModulus      = "CBEAM_E_MODULUS"
)

// Defaults are the values used when neither a flag nor the definition file
// gives one. Zero means the engine default.
type Defaults struct {
	SamplePoints   int
	ElasticModulus float64 // N/mm²
}

// LoadEnv loads the given .env files (".env" when none are named) into the
// process environment and reads the defaults from it. Missing files are not
// an error; variables already set are not overridden.
func LoadEnv(files ...string) (Defaults, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Defaults{}, fmt.Errorf("failed to load environment file: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the defaults from the process environment
func FromEnv() (Defaults, error) {
	var d Defaults
	if s := os.Getenv(EnvSamplePoints); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Defaults{}, fmt.Errorf("%s: %q is not a valid sample count", EnvSamplePoints, s)
		}
		d.SamplePoints = n
	}
	if s := os.Getenv(EnvModulus); s != "" {
		e, err := strconv.ParseFloat(s, 64)
		if err != nil || e <= 0 {
			return Defaults{}, fmt.Errorf("%s: %q is not a valid elastic modulus", EnvModulus, s)
		}
		d.ElasticModulus = e
	}
	return d, nil
}
