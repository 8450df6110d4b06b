// Package localhub holds the types shared between the hub server and its
// storage layer: repository kinds, sidecar records, and the JSON shapes the
// hub API returns to clients.
package localhub
