package logging

import "github.com/sirupsen/logrus"

// BaseFields builds the action + config path fields every startup log
// line carries, shared by every entry point.
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// RequestFields builds the per-request fields logged once Core.Handle
// returns: host (relevant only in --vhost-mode), path, status and the
// content-encoding that was negotiated.
func RequestFields(host, path string, status int, contentEncoding string) logrus.Fields {
	return logrus.Fields{
		"host":             host,
		"path":             path,
		"status":           status,
		"content_encoding": contentEncoding,
	}
}
