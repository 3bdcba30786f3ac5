package services

import "deepl-desktop/internal/logger"

// log is shared by every service in this package.
var log = logger.Named("services")
