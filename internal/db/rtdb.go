package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/oniks98/learn-lingo-sub000/internal/config"
)

var (
	// rtdbClient is the global Realtime Database client instance.
	rtdbClient *db.Client
	// fbAuthClient is the global Firebase Auth client instance.
	fbAuthClient *auth.Client
)

// InitDatabase initializes the Firebase Admin SDK and sets up the Realtime
// Database and Auth clients. Credentials come from the provided appConfig:
// either a service-account file path, a base64-encoded service-account JSON,
// or Application Default Credentials when neither is set.
func InitDatabase(ctx context.Context, appConfig *config.Config) error {
	if appConfig == nil {
		return fmt.Errorf("InitDatabase: appConfig cannot be nil")
	}

	var credsOption option.ClientOption

	switch {
	case appConfig.GoogleApplicationCredentials != "":
		if _, err := os.Stat(appConfig.GoogleApplicationCredentials); os.IsNotExist(err) {
			log.Printf("Warning: credentials file does not exist: %s", appConfig.GoogleApplicationCredentials)
		}
		credsOption = option.WithCredentialsFile(appConfig.GoogleApplicationCredentials)
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		decodedJSON, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		credsOption = option.WithCredentialsJSON(decodedJSON)
	default:
		log.Println("Initializing Firebase using Application Default Credentials (ADC).")
	}

	firebaseAppConfig := &firebase.Config{
		ProjectID:   appConfig.FirebaseProjectID,
		DatabaseURL: appConfig.FirebaseDatabaseURL,
	}

	var app *firebase.App
	var err error
	if credsOption != nil {
		app, err = firebase.NewApp(ctx, firebaseAppConfig, credsOption)
	} else {
		app, err = firebase.NewApp(ctx, firebaseAppConfig)
	}
	if err != nil {
		return fmt.Errorf("firebase.NewApp: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return fmt.Errorf("app.Database: %w", err)
	}
	rtdbClient = client

	authCl, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("app.Auth: %w", err)
	}
	fbAuthClient = authCl

	return nil
}

// GetDatabaseClient returns the global Realtime Database client. Callers
// should check for nil, which means InitDatabase has not been called or failed.
func GetDatabaseClient() *db.Client {
	if rtdbClient == nil {
		log.Println("Warning: GetDatabaseClient called before InitDatabase or InitDatabase failed.")
	}
	return rtdbClient
}

// GetFirebaseAuthClient returns the global Firebase Auth client.
func GetFirebaseAuthClient() *auth.Client {
	if fbAuthClient == nil {
		log.Println("Warning: GetFirebaseAuthClient called before InitDatabase or InitDatabase failed.")
	}
	return fbAuthClient
}
