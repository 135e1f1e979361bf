// Package plugin loads the descriptive metadata the list-plugins and help
// external collaborators need: name, description, author, license, version,
// and the component classes a plugin directory advertises.
//
// Component classes themselves are registered in process: newRegistry in
// cmd/tracegraph calls [component.Registry.Register] for each built-in class,
// and there is no dynamic loading. A plugin.jsonc manifest supplies the
// metadata that registration cannot carry. Manifest loading never causes
// registration; list-plugins only attaches a manifest's class descriptions
// to classes already registered under the same kind, plugin and class name.
package plugin
