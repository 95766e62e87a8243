package notify

// TriggerDDL installs the notification publisher: an AFTER INSERT
// trigger emitting the full row on new_message, and an AFTER UPDATE
// trigger emitting routing fields on messages_read only when is_read
// transitions false -> true. pg_notify runs inside the writing
// transaction and is delivered on commit, so emission can never roll
// back the write. All statements are idempotent.
var TriggerDDL = []string{
	`CREATE OR REPLACE FUNCTION notify_new_message() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('new_message', row_to_json(NEW)::text);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`,

	`DROP TRIGGER IF EXISTS messages_notify_insert ON messages`,

	`CREATE TRIGGER messages_notify_insert
AFTER INSERT ON messages
FOR EACH ROW EXECUTE FUNCTION notify_new_message()`,

	`CREATE OR REPLACE FUNCTION notify_messages_read() RETURNS trigger AS $$
BEGIN
	IF OLD.is_read = false AND NEW.is_read = true THEN
		PERFORM pg_notify('messages_read', json_build_object(
			'id', NEW.id,
			'sender_id', NEW.sender_id,
			'receiver_id', NEW.receiver_id,
			'job_id', NEW.job_id
		)::text);
	END IF;
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`,

	`DROP TRIGGER IF EXISTS messages_notify_read ON messages`,

	`CREATE TRIGGER messages_notify_read
AFTER UPDATE ON messages
FOR EACH ROW EXECUTE FUNCTION notify_messages_read()`,
}
