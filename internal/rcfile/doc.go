// Package rcfile stores named environment variables inside a shell startup
// file. Only the line that defines the variable (and the pmctl marker comment
// directly above it) is touched; the rest of the file is preserved as is.
package rcfile
