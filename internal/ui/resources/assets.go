// Package resources provides static asset handling for the UI server.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Stylesheet is the dashboard stylesheet under /static/.
const Stylesheet = "explorer.css"
