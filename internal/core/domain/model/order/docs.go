// Package order provides the finalized Order aggregate produced when a
// conversation is confirmed.
//
// The package includes:
//   - Order: the aggregate root holding the chosen provider location, line
//     items and the computed subtotal
//   - Item: a line item (quantity, unit price, menu item)
//   - Status: the fulfillment state machine
//
// Key business rules:
//   - An order has at least one line item and a positive quantity per item
//   - Subtotal is the sum of unit price times quantity over all items
//   - Orders start Open; providers move them to Ordered and finally Closed
//   - Closed is final
package order
