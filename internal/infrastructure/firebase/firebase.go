package firebase

import (
	"context"
	"fmt"

	"medconnect/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Clients bundles the Firebase services the API talks to.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// NewClients initializes the Firebase app. Without a credentials file the
// application default credentials are used.
func NewClients(ctx context.Context, cfg config.FirebaseConfig) (*Clients, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	} else {
		logrus.Info("FIREBASE_CREDENTIALS_FILE not set, using application default credentials")
	}

	ctx = clientContext(ctx)

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	logrus.Info("Firebase clients initialized successfully")

	return &Clients{Firestore: fs, Auth: authClient}, nil
}

// clientContext drops any deadline or cancellation from ctx. The Google
// clients hold on to it for token refresh after construction.
func clientContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
