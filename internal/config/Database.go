package config

// Database connection settings for snapshot persistence. Populated only when
// IPOOL_DB_HOST is set; the remaining variables are then required.
var (
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
)

// loadDatabaseConfig loads the database block of the configuration.
func loadDatabaseConfig() error {
	var err error

	DBHost, err = getEnv("IPOOL_DB_HOST")
	if err != nil {
		return err
	}

	DBPort, err = getEnvAsInt("IPOOL_DB_PORT")
	if err != nil {
		return err
	}

	DBUser, err = getEnv("IPOOL_DB_USER")
	if err != nil {
		return err
	}

	DBPassword, err = getEnv("IPOOL_DB_PASSWORD")
	if err != nil {
		return err
	}

	DBName, err = getEnv("IPOOL_DB_NAME")
	if err != nil {
		return err
	}

	DBSSLMode = getEnvOrDefault("IPOOL_DB_SSLMODE", "disable")

	return nil
}
