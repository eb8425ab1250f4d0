package mongo

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrConnect is returned when neither the verified nor the fallback
// connection could reach the server.
var ErrConnect = errors.New("could not connect to MongoDB")

type Client struct {
	DB *mongo.Database
	c  *mongo.Client

	// Insecure reports whether the connection skipped certificate verification.
	Insecure bool
}

type ConnectOptions struct {
	URI                   string
	Database              string
	CAFile                string
	Timeout               time.Duration
	AllowInsecureFallback bool

	Progress io.Writer
	Log      logrus.FieldLogger
}

// opener dials with the given options and proves the server answers.
type opener func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)

// Connect makes one certificate-verified attempt and, if allowed, exactly one
// fallback attempt with verification disabled. There is no retry loop.
func Connect(ctx context.Context, co ConnectOptions) (*Client, error) {
	return connect(ctx, co, openAndPing)
}

// NewFromDatabase wraps an existing database handle. Close is a no-op on it.
func NewFromDatabase(db *mongo.Database) *Client {
	return &Client{DB: db}
}

func (c *Client) Close(ctx context.Context) {
	if c == nil || c.c == nil {
		return
	}
	_ = c.c.Disconnect(ctx)
}

func (c *Client) DatabaseName() string { return c.DB.Name() }

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.Client().Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func connect(ctx context.Context, co ConnectOptions, open opener) (*Client, error) {
	out := co.Progress
	if out == nil {
		out = io.Discard
	}
	var log logrus.FieldLogger = logrus.StandardLogger()
	if co.Log != nil {
		log = co.Log
	}

	fmt.Fprintln(out, "Connecting to MongoDB...")
	cl, primaryErr := tryPrimary(ctx, co, open)
	if primaryErr == nil {
		fmt.Fprintln(out, "Connected to MongoDB")
		return &Client{DB: cl.Database(co.Database), c: cl}, nil
	}

	fmt.Fprintf(out, "Primary connection failed: %s...\n", truncate(primaryErr.Error(), 100))
	log.WithError(primaryErr).Debug("verified connection failed")
	if !co.AllowInsecureFallback {
		return nil, fmt.Errorf("%w: %w", ErrConnect, primaryErr)
	}

	fmt.Fprintln(out, "Trying fallback connection without TLS certificate verification...")
	cl, fallbackErr := open(ctx, fallbackOptions(co))
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, errors.Join(primaryErr, fallbackErr))
	}
	log.Warn("connected with TLS certificate verification disabled; do not use this outside development")
	fmt.Fprintln(out, "Connected using the fallback method")
	return &Client{DB: cl.Database(co.Database), c: cl, Insecure: true}, nil
}

func tryPrimary(ctx context.Context, co ConnectOptions, open opener) (*mongo.Client, error) {
	opts, err := primaryOptions(co)
	if err != nil {
		return nil, err
	}
	return open(ctx, opts)
}

func primaryOptions(co ConnectOptions) (*options.ClientOptions, error) {
	pool, err := rootCAs(co.CAFile)
	if err != nil {
		return nil, err
	}
	return options.Client().
		ApplyURI(co.URI).
		SetServerSelectionTimeout(co.Timeout).
		SetConnectTimeout(co.Timeout).
		SetTLSConfig(&tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}), nil
}

func fallbackOptions(co ConnectOptions) *options.ClientOptions {
	return options.Client().
		ApplyURI(co.URI).
		SetServerSelectionTimeout(co.Timeout).
		SetConnectTimeout(co.Timeout).
		SetTLSConfig(&tls.Config{InsecureSkipVerify: true}) // #nosec G402 -- explicit dev fallback
}

// rootCAs loads the CA bundle at path, or the system pool when path is empty.
func rootCAs(path string) (*x509.CertPool, error) {
	if path == "" {
		return x509.SystemCertPool()
	}
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read CA bundle: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", path)
	}
	return pool, nil
}

func openAndPing(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	cl, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := cl.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, err
	}
	return cl, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
