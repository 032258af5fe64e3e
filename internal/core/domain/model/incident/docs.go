// Package incident holds free-form problem reports raised against orders,
// such as an unreachable client or a wrong delivery address. Reports are
// append only and never change an order's status by themselves.
package incident
