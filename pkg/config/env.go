package config

import "os"

// setMissing exports vars that are not already present in the environment.
func setMissing(vars map[string]string) error {
	for k, v := range vars {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	return nil
}
