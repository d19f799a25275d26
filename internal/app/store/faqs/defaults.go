// internal/app/store/faqs/defaults.go
package faqstore

// defaultFAQ is one entry of the starter FAQ set.
type defaultFAQ struct {
	Category string
	Order    int
	Question string
	Answer   string
}

// defaults is seeded into an empty collection. Categories match the
// default FAQ categories so the public filter works out of the box.
var defaults = []defaultFAQ{
	// General
	{
		Category: "General",
		Order:    1,
		Question: "What services does A S Gupta & Co provide?",
		Answer:   "We provide comprehensive services including Income Tax Filing, GST Registration & Returns, Company Registration, Audit & Assurance, Bookkeeping, TDS Compliance, Business Advisory, and Financial Planning services for individuals and businesses.",
	},
	{
		Category: "General",
		Order:    2,
		Question: "What are your office working hours?",
		Answer:   "Our office is open Monday to Saturday from 10:00 AM to 7:00 PM. We are closed on Sundays and public holidays. You can also schedule appointments outside regular hours for urgent matters.",
	},
	{
		Category: "General",
		Order:    3,
		Question: "Do you provide services for individuals or only businesses?",
		Answer:   "We serve both individuals and businesses. For individuals, we offer income tax filing, tax planning, and financial advisory. For businesses, we provide complete accounting, GST, audit, company registration, and compliance services.",
	},
	{
		Category: "General",
		Order:    4,
		Question: "How can I schedule a consultation?",
		Answer:   "You can schedule a consultation by calling us, sending an email, or filling out the contact form on our website. We offer both in-person meetings at our Zirakpur office and virtual consultations via video call.",
	},
	// Income Tax
	{
		Category: "Income Tax",
		Order:    1,
		Question: "What is the due date for filing Income Tax Return?",
		Answer:   "For individuals and non-audit cases, the due date is usually July 31st. For businesses requiring audit, it is October 31st. For transfer pricing cases, it is November 30th. These dates may be extended by the government.",
	},
	{
		Category: "Income Tax",
		Order:    2,
		Question: "What documents are required for ITR filing?",
		Answer:   "You need PAN Card, Aadhaar Card, Form 16 (for salaried), Bank Statements, Investment Proofs (80C, 80D), Capital Gains statements, Rental Income details, and any other income documents. We will guide you through the complete list based on your specific case.",
	},
	{
		Category: "Income Tax",
		Order:    3,
		Question: "Can I file a revised return if I made a mistake?",
		Answer:   "Yes, you can file a revised return before the end of the relevant assessment year or before the completion of assessment, whichever is earlier. We can help you identify errors and file the revised return correctly.",
	},
	{
		Category: "Income Tax",
		Order:    4,
		Question: "What are the penalties for late filing of ITR?",
		Answer:   "Late filing attracts a penalty of Rs. 5,000 if filed after due date but before December 31st, and Rs. 10,000 if filed after December 31st. For taxpayers with income below Rs. 5 lakh, the maximum penalty is Rs. 1,000.",
	},
	// GST
	{
		Category: "GST",
		Order:    1,
		Question: "When is GST registration mandatory?",
		Answer:   "GST registration is mandatory if your annual turnover exceeds Rs. 40 lakh (Rs. 20 lakh for special category states) for goods, or Rs. 20 lakh (Rs. 10 lakh for special category states) for services. It is also mandatory for inter-state suppliers and e-commerce operators.",
	},
	{
		Category: "GST",
		Order:    2,
		Question: "What are the due dates for GST return filing?",
		Answer:   "GSTR-1 is due by 11th of next month, GSTR-3B by 20th of next month. Quarterly filers under QRMP scheme file GSTR-1 by 13th of month following the quarter. Annual return GSTR-9 is due by December 31st.",
	},
	{
		Category: "GST",
		Order:    3,
		Question: "What is Input Tax Credit (ITC) and how to claim it?",
		Answer:   "ITC allows you to reduce the tax you have already paid on inputs from the tax payable on output. To claim ITC, you must have a valid tax invoice, receive goods/services, file returns, and the supplier must have deposited the tax.",
	},
	{
		Category: "GST",
		Order:    4,
		Question: "What are the penalties for non-filing of GST returns?",
		Answer:   "Late fee is Rs. 50 per day (Rs. 25 CGST + Rs. 25 SGST) for regular returns, subject to a maximum. For nil returns, it is Rs. 20 per day. Interest at 18% per annum is also charged on outstanding tax liability.",
	},
	// Company & Startup
	{
		Category: "Company & Startup",
		Order:    1,
		Question: "What is the process for company registration?",
		Answer:   "The process includes: 1) Obtain DSC and DIN for directors, 2) Reserve company name via RUN, 3) Draft MOA and AOA, 4) File SPICe+ form with MCA, 5) Obtain Certificate of Incorporation. We handle the entire process and it typically takes 7-10 working days.",
	},
	{
		Category: "Company & Startup",
		Order:    2,
		Question: "What is the minimum capital required to start a Private Limited Company?",
		Answer:   "There is no minimum paid-up capital requirement for Private Limited Companies in India. You can start with any amount of capital. However, we recommend having adequate capital based on your business requirements.",
	},
	{
		Category: "Company & Startup",
		Order:    3,
		Question: "What are the compliance requirements for a Private Limited Company?",
		Answer:   "Annual compliances include filing Annual Return (MGT-7), Financial Statements (AOC-4), Income Tax Return, conducting AGM, maintaining statutory registers, and board meetings. We provide complete compliance management services.",
	},
	{
		Category: "Company & Startup",
		Order:    4,
		Question: "How can I register my startup under Startup India?",
		Answer:   "To register under Startup India, your entity should be incorporated as Private Limited, LLP, or Partnership, be less than 10 years old, have turnover below Rs. 100 crore, and work towards innovation. We help with DPIIT recognition and benefits like tax exemptions.",
	},
	// Audit & Accounting
	{
		Category: "Audit & Accounting",
		Order:    1,
		Question: "When is a tax audit required?",
		Answer:   "Tax audit under Section 44AB is required if business turnover exceeds Rs. 1 crore (Rs. 10 crore if cash transactions are less than 5%), or professional receipts exceed Rs. 50 lakh, or if claiming lower profits under presumptive taxation.",
	},
	{
		Category: "Audit & Accounting",
		Order:    2,
		Question: "What is the difference between bookkeeping and accounting?",
		Answer:   "Bookkeeping involves recording daily financial transactions like sales, purchases, receipts, and payments. Accounting is broader and includes analyzing, interpreting, and summarizing financial data to prepare financial statements and support business decisions.",
	},
	{
		Category: "Audit & Accounting",
		Order:    3,
		Question: "Do you provide virtual/cloud accounting services?",
		Answer:   "Yes, we offer cloud-based accounting services using leading software like Tally, Zoho Books, and QuickBooks. This allows real-time access to your financial data, automatic backups, and seamless collaboration.",
	},
	{
		Category: "Audit & Accounting",
		Order:    4,
		Question: "What reports will I receive from your accounting services?",
		Answer:   "You will receive monthly/quarterly financial statements including Profit & Loss Account, Balance Sheet, Cash Flow Statement, Bank Reconciliation, Accounts Receivable/Payable aging reports, and customized MIS reports as per your requirements.",
	},
}
