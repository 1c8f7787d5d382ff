package resource

import "context"

// Gateway is the remote collection API used by views.
//
// Endpoints are collection-relative paths such as "activities/"; item
// operations address "{endpoint}{id}/". Implementations authorize requests
// from the identity carried by ctx.
type Gateway interface {
	List(ctx context.Context, endpoint string) (any, error)
	Create(ctx context.Context, endpoint string, fields Entity) (Entity, error)
	Update(ctx context.Context, endpoint string, id ID, fields Entity) (Entity, error)
	Delete(ctx context.Context, endpoint string, id ID) error
}

type unavailableGateway struct{}

func (unavailableGateway) List(context.Context, string) (any, error) {
	return nil, ErrGatewayUnavailable
}

func (unavailableGateway) Create(context.Context, string, Entity) (Entity, error) {
	return nil, ErrGatewayUnavailable
}

func (unavailableGateway) Update(context.Context, string, ID, Entity) (Entity, error) {
	return nil, ErrGatewayUnavailable
}

func (unavailableGateway) Delete(context.Context, string, ID) error {
	return ErrGatewayUnavailable
}
