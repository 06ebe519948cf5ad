package model

type InquiryStatus string

const (
	InquiryStatusPending  InquiryStatus = "pending"
	InquiryStatusApproved InquiryStatus = "approved"
	InquiryStatusRejected InquiryStatus = "rejected"
)

var InquiryStatuses = []InquiryStatus{
	InquiryStatusPending,
	InquiryStatusApproved,
	InquiryStatusRejected,
}

func (s InquiryStatus) IsValid() bool {
	for _, v := range InquiryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ContentSection names an editable block of the public site.
type ContentSection string

const (
	ContentSectionHero       ContentSection = "hero"
	ContentSectionAbout      ContentSection = "about"
	ContentSectionPrograms   ContentSection = "programs"
	ContentSectionAdmissions ContentSection = "admissions"
	ContentSectionContact    ContentSection = "contact"
	ContentSectionFooter     ContentSection = "footer"
)

var ContentSections = []ContentSection{
	ContentSectionHero,
	ContentSectionAbout,
	ContentSectionPrograms,
	ContentSectionAdmissions,
	ContentSectionContact,
	ContentSectionFooter,
}

func (s ContentSection) IsValid() bool {
	for _, v := range ContentSections {
		if s == v {
			return true
		}
	}
	return false
}
