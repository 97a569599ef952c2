// Package assets provides the theme documents the renderer is styled with.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes compiled into the binary
//	    ├── FilesystemLoader  - themes from a custom directory on disk
//	    └── Resolver          - custom first, embedded as fallback
//
// Resolver is what the converter uses: a theme in the custom directory
// overrides the built-in theme of the same name, and names the custom
// directory does not define still resolve to the built-in set.
//
// # Directory Structure
//
//	{basePath}/
//	└── themes/
//	    └── {name}.yaml
//
// # Security
//
// Theme names are validated before they reach the filesystem, and
// FilesystemLoader resolves symlinks and refuses paths outside basePath.
package assets
