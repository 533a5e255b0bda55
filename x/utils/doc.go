/*
Package utils contains decorators shared by all vault handlers: Savepoint
makes a call atomic, Logging reports every call and Recovery turns panics
into errors.
*/
package utils
