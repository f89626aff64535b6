package sysmdns

import "context"

// Browser browses the local network for the mDNS services.
type Browser interface {
	// Browse notifies handler about the services until ctx is canceled.
	//
	// Remarks:
	//  - Returns nil if ctx was canceled, otherwise the reason browsing stopped.
	Browse(ctx context.Context, handler ServiceHandler) error
}
