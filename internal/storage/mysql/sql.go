package mysql

// Column order matches the spreadsheet log.
const insertCallLogSQL = `
INSERT INTO call_logs
  (call_time, phone_number, call_outcome, customer_name, room_name,
   check_in, check_out, number_of_guests, call_summary)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
`
