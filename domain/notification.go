package domain

const (
	NotificationTypeApproverNotification        = "approver_notification"
	NotificationTypeApplicationApproved         = "application_approved"
	NotificationTypeApplicationRejected         = "application_rejected"
	NotificationTypeApplicationApprovedReadonly = "application_approved_readonly"
	NotificationTypeApplicationCancelled        = "application_cancelled"
	NotificationTypePendingApprovalsReminder    = "pending_approvals_reminder"
)

// NotificationMessages holds custom templates per notification type, empty values fall back to the embedded defaults
type NotificationMessages struct {
	ApproverNotification        string `mapstructure:"approver_notification"`
	ApplicationApproved         string `mapstructure:"application_approved"`
	ApplicationRejected         string `mapstructure:"application_rejected"`
	ApplicationApprovedReadonly string `mapstructure:"application_approved_readonly"`
	ApplicationCancelled        string `mapstructure:"application_cancelled"`
	PendingApprovalsReminder    string `mapstructure:"pending_approvals_reminder"`
}

type NotificationMessage struct {
	Type      string
	Variables map[string]interface{}
}

type Notification struct {
	User    string
	Labels  map[string]string
	Message NotificationMessage
}
