package worker

import (
	"github.com/spec-kit/blog-service/internal/service"
)

// StartAuditWorker registers the audit log handlers on the dispatcher.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
