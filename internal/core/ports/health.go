package ports

import "context"

// HealthChecker probes one dependency. Check returns nil when it is usable.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// OptionalDependency marks a checker whose failure degrades the service
// without taking it down. The cache is one: reads fall through to the CMS.
type OptionalDependency interface {
	Optional() bool
}
