// Command injectgen generates getter/setter pairs for injectable dependencies.
//
// The inject package declares dependencies through handles
// (inject.DeclareInstance, inject.DeclareClass). injectgen turns a small spec
// into those handles plus methods on the owner type, so callers write
// n.Transport() and n.SetTransport(stub) instead of going through the handles.
//
//   - You write a *.inject.json (or .yaml) spec next to your type.
//   - You add a //go:generate ... directive in the owner Go file.
//   - injectgen generates, per dependency:
//       - a package-level handle
//       - <Name>() T, computing the default on first use
//       - Set<Name>(T), overriding the cached or future value
//   - For class-scoped deps it also generates Redeclare<Owner>ClassDeps(),
//     which redeclares every class-scoped handle and so resets their values.
//
// Spec format (*.inject.json)
//
//	{
//	  "package": "notify",
//	  "owner": "Notifier",
//	  "instance": [
//	    { "name": "transport", "type": "Transport", "provider": "(*Notifier).defaultTransport" }
//	  ],
//	  "class": [
//	    { "name": "clock", "type": "Clock", "provider": "systemClock",
//	      "infallible": true, "declaringType": "Service", "sync": true }
//	  ]
//	}
//
// Providers are Go expressions of type func(O) (T, error), or func(O) T when
// "infallible" is set. O is *<Owner> for instance deps and the declaring type
// (default *<Owner>) for class deps. A declaring type other than *<Owner> must
// be an interface *<Owner> implements. An empty provider makes the dependency
// set-only. "registry" takes a *inject.Registry expression for class deps.
// The owner must embed inject.Cells when it has instance deps.
//
// Typical go:generate usage
//
//	//go:generate go run ../../cmd/injectgen -spec ./specs/notifier.inject.json -out ./notifier_inject.gen.go
//
// Flags:
//
//	-spec  path to the spec (required)
//	-out   output file (required)
//	-v     log generation steps to stderr
//
// Exit code 2 means a usage error. Invalid specs panic with a descriptive error.
package main
