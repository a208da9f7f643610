package models

// DisplayDescriptor drives client rendering of a service type or severity.
// The mappings are total: unknown values fall through to a wrench/default
// descriptor so rendering never misses.
type DisplayDescriptor struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Style string `json:"style"`
}

func ServiceTypeDescriptor(t ServiceType) DisplayDescriptor {
	switch t {
	case ServiceOilChange:
		return DisplayDescriptor{Icon: "droplet", Label: string(t), Style: "primary"}
	case ServiceBrakeInspection:
		return DisplayDescriptor{Icon: "disc", Label: string(t), Style: "primary"}
	case ServiceTireRotation:
		return DisplayDescriptor{Icon: "refresh-cw", Label: string(t), Style: "primary"}
	case ServiceAnnualInspection:
		return DisplayDescriptor{Icon: "clipboard-check", Label: string(t), Style: "primary"}
	case ServiceEngineTuneUp:
		return DisplayDescriptor{Icon: "settings", Label: string(t), Style: "primary"}
	case ServiceDriverReport:
		return DisplayDescriptor{Icon: "wrench", Label: string(t), Style: "attention"}
	default:
		return DisplayDescriptor{Icon: "wrench", Label: string(t), Style: "primary"}
	}
}

func SeverityDescriptor(s NotificationSeverity) DisplayDescriptor {
	switch s {
	case SeverityInfo:
		return DisplayDescriptor{Icon: "info", Label: "Info", Style: "info"}
	case SeverityWarning:
		return DisplayDescriptor{Icon: "alert-triangle", Label: "Warning", Style: "warning"}
	case SeverityDanger:
		return DisplayDescriptor{Icon: "alert-octagon", Label: "Danger", Style: "danger"}
	default:
		return DisplayDescriptor{Icon: "bell", Label: string(s), Style: "info"}
	}
}
