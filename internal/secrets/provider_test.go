package secrets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/straye-as/kontragent-api/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVault map[string]string

func (f fakeVault) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := f[name]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

func TestResolveSource(t *testing.T) {
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceAuto, "development"))
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceAuto, ""))
	assert.Equal(t, secrets.SourceVault, secrets.ResolveSource(secrets.SourceAuto, "production"))
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceEnvironment, "production"))
}

func TestProvider_EnvironmentSource(t *testing.T) {
	t.Setenv("KONTRAGENT_TEST_SECRET", "s3cret")
	p := secrets.NewProviderWithFetcher(secrets.SourceEnvironment, nil, zap.NewNop())

	v, err := p.GetSecret(context.Background(), "KONTRAGENT_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", v)

	_, err = p.GetSecret(context.Background(), "KONTRAGENT_TEST_UNSET")
	assert.Error(t, err)
	assert.False(t, p.IsVaultEnabled())
}

func TestProvider_VaultWithoutClient(t *testing.T) {
	p := secrets.NewProviderWithFetcher(secrets.SourceVault, nil, zap.NewNop())

	_, err := p.GetSecret(context.Background(), "X")
	assert.Error(t, err)
	assert.True(t, p.IsVaultEnabled())
}

func TestProvider_Apply(t *testing.T) {
	t.Setenv("DATABASE_USER", "env-user")
	p := secrets.NewProviderWithFetcher(secrets.SourceVault, fakeVault{
		"POSTGRES-KONTRAGENT-USER":     "vault-user",
		"POSTGRES-KONTRAGENT-PASSWORD": "vault-pass",
	}, zap.NewNop())

	user, password, jwt := "cfg-user", "cfg-pass", "cfg-jwt"
	missing := p.Apply(context.Background(), []secrets.Binding{
		{SecretName: "POSTGRES-KONTRAGENT-USER", EnvName: "DATABASE_USER", Target: &user},
		{SecretName: "POSTGRES-KONTRAGENT-PASSWORD", EnvName: "KONTRAGENT_TEST_UNSET", Target: &password},
		{SecretName: "KONTRAGENT-JWT-SECRET", EnvName: "KONTRAGENT_TEST_UNSET", Target: &jwt},
	})

	assert.Equal(t, "env-user", user)
	assert.Equal(t, "vault-pass", password)
	assert.Equal(t, "cfg-jwt", jwt)
	assert.Equal(t, []string{"KONTRAGENT-JWT-SECRET"}, missing)
}

func TestNewProvider_VaultRequiresName(t *testing.T) {
	_, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      secrets.SourceAuto,
		Environment: "production",
	}, zap.NewNop())
	assert.Error(t, err)

	p, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      secrets.SourceAuto,
		Environment: "development",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, secrets.SourceEnvironment, p.Source())
}
