// Package sanitize normalizes raw type checker output into comparable lines.
//
// Sanitizing drops daemon status lines and notes attached to stub files, and
// rewrites native path separators to forward slashes so that baselines
// recorded on one platform compare cleanly on another.
package sanitize
