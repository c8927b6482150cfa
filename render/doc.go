// SPDX-License-Identifier: MIT

// Package render draws the analysis results with gonum.org/v1/plot. Every
// function writes one figure to path; the format follows the extension
// (.png, .svg, .pdf, .eps, .jpg, .tif).
package render
