// Copyright (c) 2025 mtgprice
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// WarehouseErrorType represents the category of warehouse error
type WarehouseErrorType int

const (
	WarehouseErrorUnknown WarehouseErrorType = iota
	WarehouseErrorNetwork
	WarehouseErrorAuth
	WarehouseErrorTimeout
	WarehouseErrorMissingObject
	WarehouseErrorUnavailable
)

// ParseWarehouseError categorizes a warehouse error message
func ParseWarehouseError(errMsg string) WarehouseErrorType {
	lower := strings.ToLower(errMsg)

	// Check for specific error patterns
	if strings.Contains(lower, "connection reset") || strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "no such host") {
		return WarehouseErrorNetwork
	}
	if strings.Contains(lower, "does not exist") || strings.Contains(lower, "undefined function") {
		return WarehouseErrorMissingObject
	}
	if strings.Contains(lower, "too many connections") || strings.Contains(lower, "shutting down") {
		return WarehouseErrorUnavailable
	}
	if strings.Contains(lower, "deadline") || strings.Contains(lower, "timeout") {
		return WarehouseErrorTimeout
	}
	if strings.Contains(lower, "password authentication failed") || strings.Contains(lower, "permission denied") {
		return WarehouseErrorAuth
	}

	return WarehouseErrorUnknown
}

// FormatWarehouseError formats a warehouse error in a user-friendly way
func FormatWarehouseError(errMsg string) string {
	errType := ParseWarehouseError(errMsg)

	var builder strings.Builder

	// Title
	builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Warehouse Error"))
	builder.WriteString("\n\n")

	// User-friendly description
	switch errType {
	case WarehouseErrorNetwork:
		builder.WriteString("The connection to the warehouse was interrupted unexpectedly.\n")
		builder.WriteString("This usually happens when:\n")
		builder.WriteString("  • Your internet connection was disrupted\n")
		builder.WriteString("  • The warehouse host or port is wrong\n")
		builder.WriteString("  • A firewall or proxy closed the connection\n")

	case WarehouseErrorMissingObject:
		builder.WriteString("The warehouse rejected the query because a function or view is missing.\n")
		builder.WriteString("This could mean:\n")
		builder.WriteString("  • The mtg schema has not been deployed to this database\n")
		builder.WriteString("  • You are connected to the wrong database or schema\n")

	case WarehouseErrorUnavailable:
		builder.WriteString("The warehouse is currently unavailable.\n")
		builder.WriteString("Possible reasons:\n")
		builder.WriteString("  • The warehouse is under maintenance\n")
		builder.WriteString("  • The connection limit has been reached\n")

	case WarehouseErrorTimeout:
		builder.WriteString("The warehouse query timed out.\n")
		builder.WriteString("This could be due to:\n")
		builder.WriteString("  • Slow or unstable internet connection\n")
		builder.WriteString("  • The warehouse taking too long to respond\n")

	case WarehouseErrorAuth:
		builder.WriteString("Authentication with the warehouse failed.\n")
		builder.WriteString("To fix this:\n")
		builder.WriteString("  • Run 'mtgprice connect' to update your credentials\n")
		builder.WriteString("  • Check the user and password for this warehouse\n")

	default:
		builder.WriteString("The warehouse request failed.\n")
		builder.WriteString("This could mean:\n")
		builder.WriteString("  • Network connection dropped\n")
		builder.WriteString("  • The warehouse is restarting or under maintenance\n")
	}

	builder.WriteString("\n")

	// Action to take
	if errType == WarehouseErrorAuth {
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Please run 'mtgprice connect' and try again"))
	} else {
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Please try the last action again"))
	}

	builder.WriteString("\n")

	// Technical details (optional, for debugging)
	if strings.TrimSpace(errMsg) != "" {
		builder.WriteString("\n")
		builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(errMsg)))
	}

	return builder.String()
}

// PresentWarehouseError displays a formatted warehouse error
func PresentWarehouseError(errMsg string) {
	fmt.Println()
	fmt.Println(FormatWarehouseError(errMsg))
	fmt.Println()
}
