// Package ui draws the viewer's side panel and selection overlay. The
// drawing code needs the ebiten build tag; text layout helpers do not.
package ui
