// Package upload saves files posted from the storefront's upload widget into the public directory.
package upload
