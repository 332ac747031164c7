package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/u44592/hni/internal/core/domain/model/draft"
)

// Replies sent back to the user as is.
const (
	ReplyProvideAddress  = "Please provide your address or ENDMEAL to quit"
	ReplyNotUnderstood   = "I don't understand that, please say MEAL to request a meal."
	ReplyNothingToCancel = "You are not currently ordering, please respond with MEAL to place an order."
	ReplyCancelled       = "You have successfully cancelled your order."
	ReplyConfirmOrRedo   = "Please respond with CONFIRM, REDO, or ENDMEAL"
	ReplyNoProviders     = "No provider locations near this address. Please provide another address or ENDMEAL to quit"
	ReplyNoActiveMenus   = "All providers there are not currently available. " +
		"Please try again later, provide a different address or reply ENDMEAL to quit"
	ReplyOrderConfirmed = "Your order has been confirmed, " +
		"please respond with STATUS after 5 minutes to check to status of your order."
	ReplyInvalidInput  = "Invalid input! "
	ReplySelectionHead = "Please provide the number for your selection."

	ReplyStatusOpen    = "Your order is still open, please respond with STATUS in 5 minutes to check again."
	ReplyStatusOrdered = "Your order has been placed and should be ready to pick up shortly from "
	ReplyStatusClosed  = "Your order has been marked as closed"
	ReplyStatusNone    = "I can not find a recent order for you, please respond with MEAL to place an order."
)

func chosenReply(itemName, locationName string) string {
	return fmt.Sprintf("You have chosen %s at %s. "+
		"Respond with CONFIRM to place this order, REDO to try again, or ENDMEAL to end your order",
		itemName, locationName)
}

// RenderCandidates renders the numbered selection list of a draft, e.g.
//
//	Please provide the number for your selection. 1) Soup Kitchen (Chili) 12 Elm St Suite 4.
func RenderCandidates(d *draft.Draft) string {
	var b strings.Builder
	b.WriteString(ReplySelectionHead)
	for i, c := range d.Candidates() {
		addr := c.Location().Address()
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(") ")
		b.WriteString(c.Location().Name())
		b.WriteString(" (")
		b.WriteString(c.Item().Name())
		b.WriteString(") ")
		b.WriteString(addr.Line1())
		if addr.Line2() != "" {
			b.WriteString(" ")
			b.WriteString(addr.Line2())
		}
		b.WriteString(".")
	}
	return b.String()
}
