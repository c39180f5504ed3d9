package dataset

import "strconv"

const TopicOrderGenerated = "datagen.order.generated"

// Partition key = customer_id, so a consumer sees every order of one customer in order.
func PartitionKey(customerID int) []byte { return []byte(strconv.Itoa(customerID)) }
