package mongo

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nadissa1508/CC3089-LAB-4/internal/logger"
)

// fakeOpener fails the first `failures` attempts and records every options
// value it was handed. Successful attempts return a lazily-connected client.
type fakeOpener struct {
	failures int
	seen     []*options.ClientOptions
}

func (f *fakeOpener) open(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	f.seen = append(f.seen, opts)
	if len(f.seen) <= f.failures {
		return nil, errors.New("server selection error: context deadline exceeded, current topology: { Type: ReplicaSetNoPrimary }")
	}
	return mongo.Connect(ctx, options.Client().ApplyURI("mongodb://127.0.0.1:1"))
}

func testConnectOptions(out *bytes.Buffer) ConnectOptions {
	return ConnectOptions{
		URI:                   "mongodb://127.0.0.1:27017",
		Database:              "lab_mongodb",
		Timeout:               5 * time.Second,
		AllowInsecureFallback: true,
		Progress:              out,
		Log:                   logger.Discard(),
	}
}

func TestConnect_PrimarySucceeds(t *testing.T) {
	var out bytes.Buffer
	f := &fakeOpener{}

	c, err := connect(context.Background(), testConnectOptions(&out), f.open)
	require.NoError(t, err)
	defer c.Close(context.Background())

	require.Len(t, f.seen, 1)
	tlsCfg := f.seen[0].TLSConfig
	require.NotNil(t, tlsCfg)
	assert.False(t, tlsCfg.InsecureSkipVerify)
	assert.NotNil(t, tlsCfg.RootCAs)
	assert.Equal(t, 5*time.Second, *f.seen[0].ServerSelectionTimeout)

	assert.False(t, c.Insecure)
	assert.Equal(t, "lab_mongodb", c.DatabaseName())
	assert.Contains(t, out.String(), "Connected to MongoDB")
}

func TestConnect_FallbackAfterPrimaryFailure(t *testing.T) {
	var out bytes.Buffer
	f := &fakeOpener{failures: 1}

	c, err := connect(context.Background(), testConnectOptions(&out), f.open)
	require.NoError(t, err)
	defer c.Close(context.Background())

	require.Len(t, f.seen, 2)
	assert.False(t, f.seen[0].TLSConfig.InsecureSkipVerify)
	assert.True(t, f.seen[1].TLSConfig.InsecureSkipVerify)
	assert.True(t, c.Insecure)

	printed := out.String()
	assert.Contains(t, printed, "Primary connection failed: ")
	assert.Contains(t, printed, "Connected using the fallback method")
}

func TestConnect_BothAttemptsFail(t *testing.T) {
	var out bytes.Buffer
	f := &fakeOpener{failures: 2}

	c, err := connect(context.Background(), testConnectOptions(&out), f.open)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrConnect)
	assert.Len(t, f.seen, 2, "exactly one fallback attempt, no retry loop")
}

func TestConnect_FallbackDisabled(t *testing.T) {
	var out bytes.Buffer
	f := &fakeOpener{failures: 2}
	co := testConnectOptions(&out)
	co.AllowInsecureFallback = false

	_, err := connect(context.Background(), co, f.open)
	require.ErrorIs(t, err, ErrConnect)
	assert.Len(t, f.seen, 1)
	assert.NotContains(t, out.String(), "fallback")
}

func TestConnect_BadCAFileFallsBack(t *testing.T) {
	var out bytes.Buffer
	f := &fakeOpener{}
	co := testConnectOptions(&out)
	co.CAFile = filepath.Join(t.TempDir(), "missing.pem")

	c, err := connect(context.Background(), co, f.open)
	require.NoError(t, err)
	defer c.Close(context.Background())

	require.Len(t, f.seen, 1, "the verified attempt never dialed")
	assert.True(t, f.seen[0].TLSConfig.InsecureSkipVerify)
	assert.Contains(t, out.String(), "read CA bundle")
}

func TestRootCAs_RejectsFileWithoutCertificates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))

	_, err := rootCAs(path)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ñá", truncate("ñáé", 2))
}
