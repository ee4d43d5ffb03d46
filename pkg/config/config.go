package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	StorageBackend          string // "firestore" or "mongo"
	ImageStoreMedium        string // "firebase", "cloudinary" or "inline"
	SubmitAck               string // "complete" or "immediate"
	AdminToken              string
	FirebaseCredentialsPath string
	FirebaseProjectID       string
	FirebaseStorageBucket   string
	MongoURI                string
	PostgresConnStr         string
	RedisURI                string
	CloudinaryName          string
	CloudinaryAPIKey        string
	CloudinaryAPISecret     string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		StorageBackend:          getEnv("STORAGE_BACKEND", "firestore"),
		ImageStoreMedium:        getEnv("IMAGE_STORE", "firebase"),
		SubmitAck:               getEnv("SUBMIT_ACK", "complete"),
		AdminToken:              getEnv("ADMIN_TOKEN", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseStorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		RedisURI:                getEnv("REDIS_URI", ""),
		CloudinaryName:          getEnv("CLOUDINARY_NAME", ""),
		CloudinaryAPIKey:        getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret:     getEnv("CLOUDINARY_API_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
