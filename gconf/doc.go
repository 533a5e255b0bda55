/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration record, stored under the
"_c:<package name>" key. The record is loaded from the "conf" section of the
genesis file and validated before being written.

Not being able to get a configuration value is a critical condition for the
application. Extensions should fall back to documented defaults only when the
configuration was never written (errors.ErrNotFound).
*/
package gconf
