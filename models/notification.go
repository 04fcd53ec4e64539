// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// NotificationKind names the mailer call a task performs.
type NotificationKind string

const (
	NotifyCreateContact NotificationKind = "create_contact"
	NotifyRemoveContact NotificationKind = "remove_contact"
	NotifySendEmail     NotificationKind = "send_email"
)

// NotificationTask is a best-effort call to the email service.
type NotificationTask struct {
	Kind      NotificationKind
	Email     string
	FirstName string
	LastName  string
	Subject   string
	HTML      string
}

// ContactTask builds a contact creation task for the named user.
func ContactTask(email, fullName string) NotificationTask {
	first, last := SplitName(fullName)
	return NotificationTask{Kind: NotifyCreateContact, Email: email, FirstName: first, LastName: last}
}

// ReconciliationKind describes which side of a user record was left behind.
type ReconciliationKind string

const (
	// OrphanedIdentity is a provider identity without a directory row.
	OrphanedIdentity ReconciliationKind = "orphaned_identity"
	// OrphanedDirectoryRow is a directory row without a provider identity.
	OrphanedDirectoryRow ReconciliationKind = "orphaned_directory_row"
)

// ReconciliationEvent records an inconsistency between the identity
// provider and the directory that could not be repaired inline.
type ReconciliationEvent struct {
	ID         string             `json:"id"`
	Kind       ReconciliationKind `json:"kind"`
	UserID     string             `json:"user_id"`
	Email      string             `json:"email"`
	Reason     string             `json:"reason"`
	CreatedAt  time.Time          `json:"created_at"`
	ResolvedAt *time.Time         `json:"resolved_at,omitempty"`
}
