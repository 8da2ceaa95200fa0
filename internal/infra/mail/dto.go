package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type LeadAssignedData struct {
	Name      string
	LeadName  string
	LeadEmail string
	Source    string
}

type PortalInviteData struct {
	Name        string
	CompanyName string
	PortalURL   string
}
