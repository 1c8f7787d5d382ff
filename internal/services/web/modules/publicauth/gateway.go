package publicauth

import (
	"context"

	"github.com/octofit/tracker/internal/services/web/identity"
	"github.com/octofit/tracker/internal/services/web/integration/restapi"
	apperrors "github.com/octofit/tracker/internal/services/web/platform/errors"
)

// RESTClient is the REST API surface used for authentication.
type RESTClient interface {
	Login(ctx context.Context, creds restapi.Credentials) (identity.Identity, error)
	Register(ctx context.Context, creds restapi.Credentials) (identity.Identity, error)
}

type restAuthGateway struct {
	client RESTClient
}

// NewRESTAuthGateway builds an AuthGateway backed by the REST API auth endpoints.
func NewRESTAuthGateway(client RESTClient) AuthGateway {
	if client == nil {
		return unavailableAuthGateway{}
	}
	return restAuthGateway{client: client}
}

func (g restAuthGateway) Login(ctx context.Context, creds Credentials) (identity.Identity, error) {
	return g.client.Login(ctx, restapi.Credentials{Username: creds.Username, Password: creds.Password})
}

func (g restAuthGateway) Register(ctx context.Context, creds Credentials) (identity.Identity, error) {
	return g.client.Register(ctx, restapi.Credentials{Username: creds.Username, Email: creds.Email, Password: creds.Password})
}

const authServiceUnavailableMessage = "auth service is not configured"

type unavailableAuthGateway struct{}

func (unavailableAuthGateway) Login(context.Context, Credentials) (identity.Identity, error) {
	return identity.Identity{}, apperrors.EK(apperrors.KindUnavailable, "error.unavailable", authServiceUnavailableMessage)
}

func (unavailableAuthGateway) Register(context.Context, Credentials) (identity.Identity, error) {
	return identity.Identity{}, apperrors.EK(apperrors.KindUnavailable, "error.unavailable", authServiceUnavailableMessage)
}
