// Package httpapi exposes the nutrition services over a JSON HTTP API.
//
// Routes:
//
//	GET  /health
//	POST /api/analysis/meal            {text?, image_base64?}
//	POST /api/analysis/workout         {text, weight}
//	POST /api/goals/suggest            {gender, date_of_birth, weight, height, ...}
//	GET  /api/products/barcode/{code}
//	GET  /api/foods/{name}
//
// Errors are returned as {"error": "..."} with a status derived from the
// domain error class.
package httpapi
