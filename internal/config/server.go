package config

// ListenAddr is the HTTP bind address (PORT env, default 8080).
func ListenAddr() string {
	return "0.0.0.0:" + getEnv("PORT", "8080")
}

// ModelPath is where the trained scoring model is persisted.
func ModelPath() string {
	return getEnv("MODEL_PATH", "./data/heart_model.json")
}
