package report

import (
	"context"

	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/imagefetch"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// ImageFetcher returns nil when the image cannot be used; it never fails loudly.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) *imagefetch.Payload
}

// Sink receives the finished document. It is never called with a partial one.
type Sink interface {
	Deliver(name string, document []byte) *xerr.Error
}
