// Package catalog models the read-only provider catalog consumed by the
// conversation: provider locations, their menus and menu items.
//
// Key business rules:
//   - A menu is orderable only inside its active window, expressed in whole
//     hours. A window whose start hour is not before its end hour wraps past
//     midnight.
//   - Each location contributes a single representative item: the first item
//     of the first menu that is active now, in catalog order.
package catalog
