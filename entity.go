package traits

import "fmt"

// Entity is the type-level surface the engine requires from any adopting
// entity. Invoke dispatches a named operation already resolvable on the
// entity; InstallStaticOperation binds body as a directly callable operation,
// overwriting any prior binding of the same name.
type Entity interface {
	Invoke(name string, args []any, kwargs map[string]any, block Block) (any, error)
	InstallStaticOperation(name string, body Operation)
}

func entityName(target any) string {
	if named, ok := target.(interface{ Name() string }); ok {
		if name := named.Name(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("%T", target)
}
