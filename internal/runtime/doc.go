// Package runtime provides the execution context for a jjdiverge run.
//
// It encapsulates the dependencies the resolver needs, such as the
// repository adapter, logger and prompter, and builds them from settings.
package runtime
