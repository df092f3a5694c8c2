package normalizer

// role identifies which SARIF object a node represents, as far as the rewrite rules care.
type role int

const (
	roleAny role = iota
	roleRoot
	roleRun
	roleTool
	roleToolComponent
	roleReportingDescriptor
	roleReportingConfiguration
	roleConfigurationOverride
	roleInvocation
	roleNotification
	roleResult
	roleLocation
	rolePhysicalLocation
	roleArtifactLocation
	roleRegion
	rolePropertyBag
)

// memberRole returns the role of the value stored under key in a node with role parent.
// For sequences it is the role of every element.
func memberRole(parent role, key string) role {
	// names that denote the same object type wherever they appear
	switch key {
	case "properties":
		return rolePropertyBag
	case "physicalLocation":
		return rolePhysicalLocation
	case "defaultConfiguration":
		return roleReportingConfiguration
	}

	switch parent {
	case roleRoot:
		if key == "runs" {
			return roleRun
		}
	case roleRun:
		switch key {
		case "tool":
			return roleTool
		case "results":
			return roleResult
		case "invocations":
			return roleInvocation
		}
	case roleTool:
		if key == "driver" || key == "extensions" {
			return roleToolComponent
		}
	case roleToolComponent:
		switch key {
		case "rules", "notifications", "taxa":
			return roleReportingDescriptor
		}
	case roleInvocation:
		switch key {
		case "toolExecutionNotifications", "toolConfigurationNotifications":
			return roleNotification
		case "ruleConfigurationOverrides", "notificationConfigurationOverrides":
			return roleConfigurationOverride
		}
	case roleConfigurationOverride:
		if key == "configuration" {
			return roleReportingConfiguration
		}
	case roleResult:
		if key == "locations" || key == "relatedLocations" {
			return roleLocation
		}
	case rolePhysicalLocation:
		switch key {
		case "region", "contextRegion":
			return roleRegion
		case "artifactLocation":
			return roleArtifactLocation
		}
	}
	return roleAny
}
