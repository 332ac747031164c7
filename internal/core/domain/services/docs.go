// Package services holds the conversation engine: the state machine that turns
// a user's in-progress draft and the text of one inbound message into a reply
// and the next persisted state.
//
// The package includes:
//   - Conversation: decides one turn; it never writes anything itself
//   - Decision: the reply plus the draft/order writes the caller must apply
//   - ConversationPolicy: the selection cap and search radius
//
// Persistence, locking and transactions are the command handler's job; the
// engine only reads the catalog and the user's order history.
package services
