// Package platform provides cross-platform filesystem operations for writing
// generated files. On Unix systems permission bits are applied with chmod after
// the write so the process umask cannot strip them; on Windows the chmod step is
// a no-op.
package platform
