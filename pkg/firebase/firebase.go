package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and the clients the wall uses:
// Firestore for the memories collection and the storage bucket for photos.
// Bucket is nil when no storage bucket is configured.
type App struct {
	FirebaseApp *firebase.App
	Firestore   *firestore.Client
	Bucket      *gcs.BucketHandle
}

// InitFirebase initializes the Firebase application, Firestore client and,
// when a bucket is configured, the storage bucket handle
func InitFirebase(ctx context.Context, credentialsPath, projectID, storageBucket string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)
	conf := &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: storageBucket,
	}

	firebaseApp, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %w", err)
	}

	app := &App{FirebaseApp: firebaseApp, Firestore: firestoreClient}

	if storageBucket != "" {
		storageClient, err := firebaseApp.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error getting firebase storage client: %w", err)
		}
		bucket, err := storageClient.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("error getting default storage bucket: %w", err)
		}
		app.Bucket = bucket
	}

	log.Println("Firebase app, Firestore and storage clients initialized successfully!")
	return app, nil
}

// Close releases the Firestore client.
func (a *App) Close() {
	if a.Firestore != nil {
		if err := a.Firestore.Close(); err != nil {
			log.Printf("Error closing Firestore client: %v\n", err)
		}
	}
}
